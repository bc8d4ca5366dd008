// Command token signs a service token for an internal collaborator, using
// the jwt section of config.yaml.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"steward/socialhub/internal/config"
	jwtpkg "steward/socialhub/pkg/jwt"
)

var errNoSigningKey = errors.New("jwt.signing_key is not configured")

type Options struct {
	Config  string        `short:"c" long:"config" default:"config.yaml" description:"path to config.yaml"`
	Subject string        `short:"s" long:"subject" required:"true" description:"token subject, e.g. scheduler"`
	TTL     time.Duration `long:"ttl" description:"token lifetime; defaults to jwt.token_ttl"`
}

func parseOptions(args []string) (*Options, error) {
	opts := &Options{}
	if _, err := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash).ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func mint(cfg config.JWTConfig, subject string, ttl time.Duration) (string, error) {
	if cfg.SigningKey == "" {
		return "", errNoSigningKey
	}
	if ttl <= 0 {
		ttl = cfg.TokenTTL
	}
	return jwtpkg.NewManager(cfg.SigningKey, cfg.Issuer, ttl).GenerateServiceToken(subject)
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	token, err := mint(cfg.JWT, opts.Subject, opts.TTL)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
