package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"object-resolver/feature/manifest"
	"object-resolver/feature/resolve"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resolveJSON    bool
	resolvePersist bool
	resolveOutput  string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [pattern...]",
	Short: "Expand wildcard patterns into object keys",
	Long: `Lists the bucket for every pattern and prints the matched keys sorted lexicographically,
one per line. Each pattern holds exactly one '*'. Without arguments the patterns configured in
RESOLVER_PATTERNS are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		patterns := args
		if len(patterns) == 0 {
			patterns = rt.cfg.Resolver.PatternList()
		}
		if len(patterns) == 0 {
			return fmt.Errorf("no patterns given and none configured")
		}

		var store resolve.ManifestStore
		if resolvePersist {
			db := rt.connectDB()
			if db == nil {
				return resolve.ErrManifestsDisabled
			}
			s := manifest.NewStore(db)
			if err := s.Migrate(); err != nil {
				return err
			}
			store = s
		}

		resolver := resolve.NewResolver(rt.client, rt.logger, nil)
		svc := resolve.NewService(resolver, rt.cfg.Storage.Bucket, rt.logger, store, rt.cfg.Resolver.Concurrency)

		var keys []string
		manifestID := ""
		if resolvePersist {
			var m *manifest.Manifest
			keys, m, err = svc.ResolveAndRecord(cmd.Context(), bucketFlag, patterns)
			if err == nil {
				manifestID = m.ID
			}
		} else {
			keys, err = svc.Resolve(cmd.Context(), bucketFlag, patterns)
		}
		if err != nil {
			return err
		}

		out := os.Stdout
		if resolveOutput != "" {
			f, err := os.Create(resolveOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if resolveJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resolve.Response{
				Bucket:     svc.Bucket(bucketFlag),
				Count:      len(keys),
				Keys:       keys,
				ManifestID: manifestID,
			}); err != nil {
				return err
			}
		} else {
			for _, k := range keys {
				fmt.Fprintln(out, k)
			}
		}

		rt.logger.Info("Resolution completed",
			zap.Int("patterns", len(patterns)),
			zap.Int("keys", len(keys)),
			zap.String("manifest_id", manifestID),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the result as JSON")
	resolveCmd.Flags().BoolVar(&resolvePersist, "persist", false, "Store the result as a manifest in the database")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "Write keys to a file instead of stdout")
}
