package lib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/stensonb/awshelper/lib/awscli"
	"github.com/stensonb/awshelper/lib/cache"
	"github.com/stensonb/awshelper/lib/config"
	"github.com/stensonb/awshelper/lib/log"
	"github.com/stensonb/awshelper/lib/output"
	"github.com/stensonb/awshelper/lib/profile"
	"github.com/stensonb/awshelper/lib/runner"
	"github.com/stensonb/awshelper/lib/types"
)

var (
	ErrNoProfile = errors.New("no profile found")
	// Capitalised to keep the message users and scripts already match on.
	ErrProfileNotFound = errors.New("Profile not found")
)

// Refresher makes the AWS CLI (re)generate its cache file for a profile.
type Refresher interface {
	Refresh(ctx context.Context, profile string) error
}

type Helper struct {
	Env       config.Environment
	Store     *profile.Store
	Cache     *cache.Cache
	Refresher Refresher
	Output    output.Target
	Runner    *runner.Runner
	Now       func() time.Time
}

// NewHelper wires a Helper from the loaded settings.
func NewHelper(settings config.Settings, env config.Environment) (*Helper, error) {
	c, err := cache.New(settings.CacheDir)
	if err != nil {
		return nil, err
	}

	return &Helper{
		Env:       env,
		Store:     profile.NewStore(settings.ConfigFile),
		Cache:     c,
		Refresher: awscli.New(settings.AWSCLI),
		Output: output.Target{
			Stdout:     os.Stdout,
			DotenvPath: settings.DotenvFile,
		},
		Runner: runner.New(settings.Shell),
		Now:    time.Now,
	}, nil
}

// Run resolves the profile named in args (args[0] is the program name),
// loads its cached SSO credentials and hands them out according to the
// output mode. In pass-through mode the remaining args are run as a shell
// command; its non-zero exit comes back as *runner.ExitError.
func (h *Helper) Run(ctx context.Context, args []string) error {
	ref := profile.Resolve(args, h.Env)
	if ref.Name == "" {
		return ErrNoProfile
	}

	details, err := h.Store.Load(ref.Name)
	if err != nil {
		return err
	}
	if details == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, ref.Name)
	}

	key, err := cache.Key(details)
	if err != nil {
		return fmt.Errorf("profile %s: %w", ref.Name, err)
	}
	log.Traceln("profile %s uses cache key %s", ref.Name, key)

	record, err := h.credentials(ctx, ref.Name, key)
	if err != nil {
		return err
	}

	creds, err := record.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", h.Cache.Path(key), err)
	}

	passThrough, err := h.Output.Emit(h.Env.Mode(), record, creds)
	if err != nil || !passThrough {
		return err
	}

	return h.Runner.Run(ref.Command(args), runner.Environ(h.Env.Vars, creds, ref.Name))
}

// credentials reads the cache entry for key. A miss and an expired entry each
// get one refresh followed by one more read; the read after an expiry refresh
// is not checked for expiry again.
func (h *Helper) credentials(ctx context.Context, name, key string) (*types.CredentialRecord, error) {
	record, err := h.Cache.Read(key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			return nil, err
		}
		log.Traceln("%v", err)
		log.Writeln("Credentials file not found. Executing aws sts get-caller-identity --profile %s to generate it", name)

		if record, err = h.refresh(ctx, name, key); err != nil {
			return nil, err
		}
	}

	expired, err := cache.Expired(record.Expiration, h.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Cache.Path(key), err)
	}
	if !expired {
		return record, nil
	}

	log.Writeln("Cached credentials expired at %s. Executing aws sts get-caller-identity --profile %s to refresh them", record.Expiration, name)
	return h.refresh(ctx, name, key)
}

func (h *Helper) refresh(ctx context.Context, name, key string) (*types.CredentialRecord, error) {
	if err := h.Refresher.Refresh(ctx, name); err != nil {
		return nil, err
	}

	record, err := h.Cache.Read(key)
	if err != nil {
		return nil, fmt.Errorf("unable to read cache file generated by aws cli. You might not be logged in (run aws sso login --profile %s): %w", name, err)
	}
	return record, nil
}

func (h *Helper) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
