package awscli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stensonb/awshelper/lib/log"
)

// CLI drives the external AWS CLI binary.
type CLI struct {
	Binary string
}

func New(binary string) *CLI {
	return &CLI{Binary: binary}
}

// Refresh runs `sts get-caller-identity` for profile. The call is only made
// for its side effect: the AWS CLI writes (or rewrites) its credential cache
// file while answering it.
func (c *CLI) Refresh(ctx context.Context, profile string) error {
	args := []string{"sts", "get-caller-identity", "--profile", profile}
	log.Traceln("running %s %v", c.Binary, args)

	out, err := exec.CommandContext(ctx, c.Binary, args...).CombinedOutput()
	if err != nil {
		err = fmt.Errorf("%s sts get-caller-identity --profile %s failed, you might not be logged in (run %s sso login --profile %s): %w",
			c.Binary, profile, c.Binary, profile, err)
		if out = bytes.TrimSpace(out); len(out) > 0 {
			err = fmt.Errorf("%w\n%s", err, out)
		}
		return err
	}

	identity, err := ParseIdentity(out)
	if err != nil {
		log.Traceln("can't read caller identity: %v", err)
		return nil
	}

	log.Writeln("Generated cli cache. Logged in as %s", identity)
	return nil
}

// ParseIdentity extracts the caller ARN from get-caller-identity output.
func ParseIdentity(out []byte) (arn.ARN, error) {
	var identity sts.GetCallerIdentityOutput
	if err := json.Unmarshal(out, &identity); err != nil {
		return arn.ARN{}, fmt.Errorf("failed to unmarshal caller identity: %w", err)
	}

	a := aws.ToString(identity.Arn)
	if a == "" {
		return arn.ARN{}, fmt.Errorf("caller identity has no Arn")
	}

	return arn.Parse(a)
}
