package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-myvariant/internal/annotate"
	"github.com/inodb/vibe-myvariant/internal/myvariant"
)

// Defaults for the chromosome 16 exercise.
const (
	defaultVCF   = "chr16.vcf"
	defaultCache = "annotation.json"
)

// settings is the resolved configuration for one invocation.
type settings struct {
	VCF      string
	Cache    string
	Limit    int
	Endpoint string
	Fields   []string
	HG38     bool
	Timeout  time.Duration
	Retry    time.Duration
	Verbose  bool
}

// settingKeys are bound to flags, env vars and the config file.
var settingKeys = []string{"vcf", "cache", "limit", "endpoint", "fields", "hg38", "timeout", "retry", "verbose"}

func registerSettingsFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default: ~/.vibe-myvariant.yaml)")
	pf.String("vcf", defaultVCF, "Input VCF file")
	pf.String("cache", defaultCache, "Annotation cache file (written once, never overwritten)")
	pf.Int("limit", annotate.DefaultLimit, "Number of leading VCF records to annotate")
	pf.String("endpoint", myvariant.DefaultEndpoint, "myvariant.info batch variant endpoint")
	pf.StringSlice("fields", myvariant.DefaultFields, "Data sources requested from myvariant.info")
	pf.Bool("hg38", true, "Query GRCh38 coordinates")
	pf.Duration("timeout", 60*time.Second, "Per-request HTTP timeout")
	pf.Duration("retry", 2*time.Minute, "Maximum time spent retrying a failed request (0 disables retries)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	for _, key := range settingKeys {
		_ = viper.BindPFlag(key, pf.Lookup(key))
	}
}

// viperSettings resolves the settings for one invocation. A limit that is
// not a positive integer is a usage error.
func viperSettings() (settings, error) {
	limit, err := cast.ToIntE(viper.Get("limit"))
	if err != nil {
		return settings{}, usageError{fmt.Errorf("invalid limit %q: must be a positive integer", viper.GetString("limit"))}
	}
	if limit <= 0 {
		return settings{}, usageError{fmt.Errorf("invalid limit %d: must be a positive integer", limit)}
	}

	return settings{
		VCF:      viper.GetString("vcf"),
		Cache:    viper.GetString("cache"),
		Limit:    limit,
		Endpoint: viper.GetString("endpoint"),
		Fields:   viper.GetStringSlice("fields"),
		HG38:     viper.GetBool("hg38"),
		Timeout:  viper.GetDuration("timeout"),
		Retry:    viper.GetDuration("retry"),
		Verbose:  viper.GetBool("verbose"),
	}, nil
}
