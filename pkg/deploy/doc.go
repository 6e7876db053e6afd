// Package deploy uploads built site assets to S3 for the strata deploy
// command.
package deploy
