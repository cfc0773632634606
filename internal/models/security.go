package models

// SecurityData holds the raw descriptors collected for one audit run, one
// slice per category, each in the order the provider returned them.
// Errors records, per category, why the top-level list call failed; a
// category present in Errors has a nil slice.
type SecurityData struct {
	Buckets        []S3Bucket         `json:"buckets"`
	DBInstances    []DBInstance       `json:"db_instances"`
	SecurityGroups []SecurityGroup    `json:"security_groups"`
	Errors         map[Category]error `json:"-"`
}

// ListError returns the list failure recorded for c, or nil.
func (d *SecurityData) ListError(c Category) error {
	if d == nil || d.Errors == nil {
		return nil
	}
	return d.Errors[c]
}

// Count returns the number of descriptors held for c.
func (d *SecurityData) Count(c Category) int {
	if d == nil {
		return 0
	}
	switch c {
	case CategoryStorage:
		return len(d.Buckets)
	case CategoryDatabase:
		return len(d.DBInstances)
	case CategoryNetwork:
		return len(d.SecurityGroups)
	}
	return 0
}

// GranteeScope classifies who an access grant applies to.
type GranteeScope string

const (
	GranteeAllUsers           GranteeScope = "all-users"
	GranteeAuthenticatedUsers GranteeScope = "authenticated-users"
	GranteeSpecificIdentity   GranteeScope = "specific-identity"
)

// BucketGrant is a single ACL grant on a bucket.
type BucketGrant struct {
	Scope      GranteeScope `json:"scope"`
	Permission string       `json:"permission,omitempty"`
}

// VersioningStatus is the bucket versioning state as reported by S3.
// A bucket that never had versioning configured reports no status at all,
// represented as VersioningUnset.
type VersioningStatus string

const (
	VersioningEnabled   VersioningStatus = "Enabled"
	VersioningSuspended VersioningStatus = "Suspended"
	VersioningUnset     VersioningStatus = "Unset"
)

// S3Bucket is the descriptor of one S3 bucket. Grants, LoggingEnabled and
// Versioning are fetched by separate API calls, so each may independently
// be unavailable.
// LoggingEnabled is true iff a server access logging target is configured.
// Region is where the bucket lives, which may differ from the audit region.
type S3Bucket struct {
	Name           string                 `json:"name"`
	Region         string                 `json:"region,omitempty"`
	Grants         Attr[[]BucketGrant]    `json:"grants"`
	LoggingEnabled Attr[bool]             `json:"logging_enabled"`
	Versioning     Attr[VersioningStatus] `json:"versioning"`
}

// Validate reports ErrMalformedDescriptor when the bucket has no name.
func (b S3Bucket) Validate() error {
	if b.Name == "" {
		return malformed("S3 bucket", "name")
	}
	return nil
}

// DBInstance is the descriptor of one RDS database instance. Fields that the
// API omits are defaulted by the collector to their insecure value:
// PubliclyAccessible false, DeletionProtection false, BackupRetentionPeriod 0.
type DBInstance struct {
	Identifier            string `json:"identifier"`
	Engine                string `json:"engine,omitempty"`
	PubliclyAccessible    bool   `json:"publicly_accessible"`
	DeletionProtection    bool   `json:"deletion_protection"`
	BackupRetentionPeriod int    `json:"backup_retention_period"`
}

// Validate reports ErrMalformedDescriptor when the instance has no identifier.
func (d DBInstance) Validate() error {
	if d.Identifier == "" {
		return malformed("RDS instance", "identifier")
	}
	return nil
}

// PortRange is an inclusive port interval.
type PortRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether port lies within the range, bounds included.
func (r PortRange) Contains(port int) bool {
	return r.From <= port && port <= r.To
}

// IngressRule is one inbound permission of a security group.
// Ports is nil when the API returned no port bounds (e.g. protocol "-1").
type IngressRule struct {
	Protocol   string     `json:"protocol,omitempty"`
	Ports      *PortRange `json:"ports,omitempty"`
	IPv4Ranges []string   `json:"ipv4_ranges,omitempty"`
	IPv6Ranges []string   `json:"ipv6_ranges,omitempty"`
}

// SecurityGroup is the descriptor of one EC2 security group.
type SecurityGroup struct {
	GroupID      string        `json:"group_id"`
	GroupName    string        `json:"group_name"`
	IngressRules []IngressRule `json:"ingress_rules"`
}

// Validate reports ErrMalformedDescriptor when the group has no ID.
func (g SecurityGroup) Validate() error {
	if g.GroupID == "" {
		return malformed("security group", "group ID")
	}
	return nil
}

// DisplayName renders the group as "name (sg-id)", or just the ID when the
// group has no name.
func (g SecurityGroup) DisplayName() string {
	if g.GroupName == "" {
		return g.GroupID
	}
	return g.GroupName + " (" + g.GroupID + ")"
}
