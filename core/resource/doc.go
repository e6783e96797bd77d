// Package resource maps unit names to resource locators and fetches the
// resources behind them.
//
// The naming convention comes from the external build: a filename template
// such as "[name].bundle.lua" is expanded with the unit name and joined to a
// base path, so unit "app1" resolves to "dist/app1.bundle.lua".
//
// Two fetchers are provided:
//   - StorageFetcher: downloads objects from an S3/MinIO bucket.
//   - FSFetcher: reads files through an afero filesystem.
//
// Both classify failures with unit.ErrNotFound or unit.ErrTransport.
package resource
