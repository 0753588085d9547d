package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/LambdaTest/xdist-tracker/pkg/azure"
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func uploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [record files]",
		Short: "Upload worker records to azure blob storage (default: every {prefix}_worker_*.txt in rootdir)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			files := args
			if len(files) == 0 {
				pattern := filepath.Join(cfg.RootDir, cfg.XdistStats+"_"+constants.WorkerToken+"_*"+constants.RecordFileExt)
				if files, err = filepath.Glob(pattern); err != nil {
					return err
				}
			}
			if len(files) == 0 {
				logger.Warnf("no worker records found in %s", cfg.RootDir)
				return nil
			}
			store, err := azure.NewAzureBlobEnv(cfg, logger)
			if err != nil {
				logger.Errorf("could not instantiate azure client %v", err)
				return err
			}
			var sharer core.RecordSharer
			if withSas, _ := cmd.Flags().GetBool("sas"); withSas {
				sharer = store
			}
			ctx, cancel := signalContext()
			defer cancel()
			return uploadRecords(ctx, store, sharer, files, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().Bool("sas", false, "print a read-only shareable url for each uploaded record")
	return cmd
}

// uploadRecords uploads the files in parallel and prints the blob url of each.
// When sharer is set the printed url is a read-only SAS link instead.
func uploadRecords(ctx context.Context, uploader core.RecordUploader, sharer core.RecordSharer,
	files []string, out io.Writer, logger lumber.Logger) error {
	urls := make([]string, len(files))
	g, errCtx := errgroup.WithContext(ctx)
	for i := range files {
		i := i
		g.Go(func() error {
			blobPath := filepath.Base(files[i])
			blobURL, err := uploader.UploadFile(errCtx, blobPath, files[i])
			if err != nil {
				logger.Errorf("failed to upload %s, error: %v", files[i], err)
				return err
			}
			if sharer != nil {
				if blobURL, err = sharer.GenerateSasURL(errCtx, blobPath); err != nil {
					logger.Errorf("failed to generate sas url for %s, error: %v", blobPath, err)
					return err
				}
			}
			urls[i] = blobURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, file := range files {
		fmt.Fprintf(out, "%s -> %s\n", file, urls[i])
	}
	return nil
}

func fetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <blob> [destination]",
		Short: "Download a worker record from azure blob storage",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			store, err := azure.NewAzureBlobEnv(cfg, logger)
			if err != nil {
				logger.Errorf("could not instantiate azure client %v", err)
				return err
			}
			blobPath := azure.BlobPath(args[0])
			dest := filepath.Join(cfg.RootDir, filepath.Base(blobPath))
			if len(args) == 2 {
				dest = resolve(cfg.RootDir, args[1])
			}
			ctx, cancel := signalContext()
			defer cancel()
			spec, err := record.Load(ctx, azure.NewRecordSource(store, blobPath))
			if err != nil {
				return err
			}
			if err := record.WriteFile(dest, spec.IDs()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d tests into %s\n", spec.Len(), dest)
			if withSas, _ := cmd.Flags().GetBool("sas"); withSas {
				return printSasURL(ctx, store, blobPath, cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().Bool("sas", false, "also print a read-only shareable url for the record")
	return cmd
}

func printSasURL(ctx context.Context, sharer core.RecordSharer, blobPath string, out io.Writer) error {
	sasURL, err := sharer.GenerateSasURL(ctx, blobPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "share: %s\n", sasURL)
	return nil
}

type showOutput struct {
	Source  string        `json:"source"`
	Tests   []core.TestID `json:"tests"`
	Modules []core.TestID `json:"modules"`
}

func showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <record>",
		Short: "Print the decoded tests of a local worker record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			source := record.FileSource{Path: resolve(cfg.RootDir, args[0])}
			spec, err := record.Load(context.Background(), source)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return printSpec(cmd.OutOrStdout(), source.String(), spec, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "print the record as json")
	return cmd
}

func printSpec(out io.Writer, source string, spec *record.Spec, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(showOutput{Source: source, Tests: spec.IDs(), Modules: spec.Modules()})
	}
	for _, id := range spec.IDs() {
		fmt.Fprintln(out, id)
	}
	return nil
}
