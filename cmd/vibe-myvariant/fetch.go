package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-myvariant/internal/annotate"
	"github.com/inodb/vibe-myvariant/internal/myvariant"
)

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Populate the annotation cache without analysing it",
		Long: `Query myvariant.info with the first --limit records of --vcf and store the
raw response in --cache. Does nothing when the cache file already exists.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viperSettings()
			if err != nil {
				return err
			}
			f, fetched, err := a.fetch(cmd.Context(), s)
			if err != nil {
				return err
			}
			if fetched {
				fmt.Fprintf(cmd.OutOrStdout(), "Fetched annotations: %s\n", f.Describe())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Annotations already present: %s\n", f.Describe())
			}
			return nil
		},
	}
}

// fetch makes sure the annotation cache exists, querying the service
// only when it does not.
func (a *app) fetch(ctx context.Context, s settings) (*annotate.Fetcher, bool, error) {
	client := myvariant.NewClient(s.Endpoint)
	client.SetFields(s.Fields)
	client.SetHG38(s.HG38)
	client.SetTimeout(s.Timeout)
	client.SetRetry(500*time.Millisecond, s.Retry)
	client.SetLogger(a.logger)

	f := annotate.NewFetcher(client, s.Cache)
	f.SetLimit(s.Limit)
	f.SetLogger(a.logger)

	fetched, err := f.Fetch(ctx, s.VCF)
	if err != nil {
		return f, false, fmt.Errorf("fetch annotations: %w", err)
	}
	return f, fetched, nil
}
