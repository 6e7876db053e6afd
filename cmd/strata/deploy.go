package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/strata-dev/strata/internal/config"
	"github.com/strata-dev/strata/internal/errors"
	"github.com/strata-dev/strata/pkg/deploy"
)

func deployCmd() *cobra.Command {
	var (
		dir    string
		bucket string
		region string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload built site assets to S3",
		Long: `Upload the contents of the build output directory to an S3 bucket.

Credentials are resolved from the standard AWS environment (env vars,
shared config, instance role). Bucket and region default to the deploy
section of strata.json.

Examples:
  strata deploy
  strata deploy --dir=dist --bucket=my-site --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, dir, bucket, region, prefix)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "dist", "Directory to upload")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (default from strata.json)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (default from strata.json)")
	cmd.Flags().StringVarP(&prefix, "prefix", "P", "", "Key prefix for uploaded objects")

	return cmd
}

func runDeploy(cmd *cobra.Command, dir, bucket, region, prefix string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = cfg.Deploy.Bucket
	}
	if region == "" {
		region = cfg.Deploy.Region
	}
	if prefix == "" {
		prefix = cfg.Deploy.Prefix
	}
	if bucket == "" {
		return errors.Newf(errors.CategoryDeploy, "no bucket configured").
			WithSuggestion("Set deploy.bucket in strata.json or pass --bucket")
	}
	if _, err := os.Stat(dir); err != nil {
		return errors.Newf(errors.CategoryDeploy, "build directory %q not found", dir).
			WithSuggestion("Build the site before deploying")
	}

	ctx := cmd.Context()
	client, err := deploy.NewClient(ctx, region)
	if err != nil {
		return errors.New("E402").Wrap(err)
	}

	info("Uploading %s to s3://%s/%s", dir, bucket, prefix)
	start := time.Now()

	uploader := deploy.NewUploader(client, bucket, prefix, nil)
	n, err := uploader.UploadDir(ctx, dir)
	if err != nil {
		return errors.New("E401").Wrap(err)
	}

	success("Uploaded %d files in %s", n, time.Since(start).Round(time.Millisecond))
	return nil
}
