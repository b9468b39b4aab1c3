package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/shelters/internal/config"
	"github.com/dgallion1/shelters/internal/shelters"
)

// NewShelterPOICmd returns the command that converts the shelter list into
// POI records.
func NewShelterPOICmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	var (
		file     string
		save     string
		features string
	)

	cmd := &cobra.Command{
		Use:   "shelterpoi",
		Short: "Print the shelter list as POI records",
		Long: `Reads the shelter list from a JSON file, or downloads it from the shelter
app API, and prints one POI record per shelter.`,
		Args:    cobra.NoArgs,
		PreRunE: checkConfig(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := shelters.LoadCatalogue(features)
			if err != nil {
				return &runError{err: err}
			}

			var list []shelters.Shelter
			if file != "" {
				list, err = readShelters(file)
			} else {
				list, err = fetchShelters(cmd.Context(), cfg, log, save)
			}
			if err != nil {
				return &runError{err: err}
			}

			log.Debug("writing poi records", "shelters", len(list))
			if err := shelters.WritePOI(cmd.OutOrStdout(), list, cat); err != nil {
				return &runError{err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Shelter list JSON file (default: download from the API)")
	cmd.Flags().StringVar(&save, "save", "", "Write the downloaded JSON to this path")
	cmd.Flags().StringVar(&features, "features", cfg.FeaturesFile, "YAML file overriding feature descriptions")
	cmd.MarkFlagsMutuallyExclusive("file", "save")

	return cmd
}

func readShelters(path string) ([]shelters.Shelter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shelters: %w", err)
	}
	defer f.Close()
	return shelters.Decode(f)
}

func fetchShelters(ctx context.Context, cfg config.Config, log *slog.Logger, save string) ([]shelters.Shelter, error) {
	client := shelters.NewClient(cfg.SheltersAPIURL, cfg.SheltersUserAgent, cfg.SheltersTimeout, log)
	defer client.Close()

	list, raw, err := client.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if save != "" {
		if err := os.WriteFile(save, raw, 0o644); err != nil {
			return nil, fmt.Errorf("save shelters: %w", err)
		}
		log.Info("saved shelter list", "path", save, "bytes", len(raw))
	}
	return list, nil
}

// RunShelterPOI executes the shelterpoi command with args and returns the
// process exit code.
func RunShelterPOI(ctx context.Context, args []string, s Streams) int {
	cfg := config.Load()
	log := NewLogger(cfg, s.Err)
	return execute(ctx, NewShelterPOICmd(cfg, log), args, s, log)
}
