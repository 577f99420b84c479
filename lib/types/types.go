package types

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// CacheEntry is the JSON document the AWS CLI writes to ~/.aws/cli/cache.
type CacheEntry struct {
	ProviderType string            `json:"ProviderType"`
	Credentials  *CredentialRecord `json:"Credentials"`
}

type CredentialRecord struct {
	AccessKeyId     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
	Expiration      string `json:"Expiration"`
}

// Credentials converts the record through a static provider, which rejects
// records without an access key pair.
func (r *CredentialRecord) Credentials(ctx context.Context) (aws.Credentials, error) {
	p := credentials.NewStaticCredentialsProvider(r.AccessKeyId, r.SecretAccessKey, r.SessionToken)
	creds, err := p.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("invalid cached credentials: %w", err)
	}
	return creds, nil
}

// ProcessCredential is the credential_process output document. Fields are
// declared in sorted order so the encoded keys come out sorted.
type ProcessCredential struct {
	AccessKeyId     string `json:"AccessKeyId"`
	Expiration      string `json:"Expiration"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
	Version         int    `json:"Version"`
}

const (
	AWS_ACCESS_KEY_ID     = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY = "AWS_SECRET_ACCESS_KEY"
	AWS_SESSION_TOKEN     = "AWS_SESSION_TOKEN"
)

// CredentialEnv returns the standard credential variables in KEY=VALUE form.
func CredentialEnv(creds aws.Credentials) []string {
	return []string{
		AWS_ACCESS_KEY_ID + "=" + creds.AccessKeyID,
		AWS_SECRET_ACCESS_KEY + "=" + creds.SecretAccessKey,
		AWS_SESSION_TOKEN + "=" + creds.SessionToken,
	}
}
