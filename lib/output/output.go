package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stensonb/awshelper/lib/config"
	"github.com/stensonb/awshelper/lib/log"
	"github.com/stensonb/awshelper/lib/types"
)

// Target is where the terminal output modes write to.
type Target struct {
	Stdout     io.Writer
	DotenvPath string
}

// Emit handles the process-credential and dotenv modes. It returns true when
// mode is pass-through and the caller should go on to run the wrapped command.
func (t Target) Emit(mode config.Mode, record *types.CredentialRecord, creds aws.Credentials) (bool, error) {
	log.Traceln("output mode: %s", mode)

	switch mode {
	case config.ProcessCredential:
		return false, WriteProcessCredential(t.Stdout, record)
	case config.DotenvFile:
		if err := MergeDotenv(t.DotenvPath, creds); err != nil {
			return false, err
		}
		log.Writeln("Wrote AWS credentials to %s", t.DotenvPath)
		return false, nil
	default:
		return true, nil
	}
}

// WriteProcessCredential prints the credential_process document, keys sorted
// and indented by four spaces.
func WriteProcessCredential(w io.Writer, record *types.CredentialRecord) error {
	doc := types.ProcessCredential{
		AccessKeyId:     record.AccessKeyId,
		Expiration:      record.Expiration,
		SecretAccessKey: record.SecretAccessKey,
		SessionToken:    record.SessionToken,
		Version:         1,
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal AWS credential response to JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
