package common

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSTS struct{ mock.Mock }

func (m *mockSTS) GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

// isolateSharedConfig points the SDK at empty shared config files so tests
// never read the developer's ~/.aws directory.
func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

func TestLoadProfile_ExplicitRegion(t *testing.T) {
	isolateSharedConfig(t)
	m := new(mockSTS)
	m.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{Account: aws.String("111122223333")}, nil)

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config) *ClientSet { return &ClientSet{STS: m} })
	pc, err := p.LoadProfile(context.Background(), "", "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, "default", pc.ProfileName)
	assert.Equal(t, "111122223333", pc.AccountID)
	assert.Equal(t, "us-west-2", pc.Region)
	assert.Equal(t, "us-west-2", pc.Config.Region)
	m.AssertExpectations(t)
}

func TestLoadProfile_FallsBackToDefaultRegion(t *testing.T) {
	isolateSharedConfig(t)
	m := new(mockSTS)
	m.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{Account: aws.String("111122223333")}, nil)

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config) *ClientSet { return &ClientSet{STS: m} })
	pc, err := p.LoadProfile(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, pc.Region)
}

func TestLoadProfile_STSFailure(t *testing.T) {
	isolateSharedConfig(t)
	m := new(mockSTS)
	m.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(nil, errors.New("ExpiredToken"))

	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config) *ClientSet { return &ClientSet{STS: m} })
	_, err := p.LoadProfile(context.Background(), "", "eu-north-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve account ID")
	assert.Contains(t, err.Error(), "ExpiredToken")
}

func TestLoadProfile_UnknownProfile(t *testing.T) {
	isolateSharedConfig(t)
	p := NewDefaultAWSClientProviderWithFactory(func(aws.Config) *ClientSet {
		t.Fatal("factory must not be called when the profile cannot be loaded")
		return nil
	})
	_, err := p.LoadProfile(context.Background(), "does-not-exist", "eu-north-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"does-not-exist"`)
}

func TestResolveAccountID_NilAccount(t *testing.T) {
	m := new(mockSTS)
	m.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{}, nil)
	_, err := resolveAccountID(context.Background(), m)
	assert.Error(t, err)
}

func TestConfigForRegion_DoesNotMutateProfile(t *testing.T) {
	p := NewDefaultAWSClientProvider()
	pc := &ProfileConfig{Region: "eu-north-1", Config: aws.Config{Region: "eu-north-1"}}
	cfg := p.ConfigForRegion(pc, "us-east-1")
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "eu-north-1", pc.Config.Region)
}
