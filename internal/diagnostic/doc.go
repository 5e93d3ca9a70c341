// Package diagnostic provides structured warnings and errors for the
// instrument mapping pipeline.
//
// Key capabilities:
//   - Unidentifiable filename warnings
//   - Empty layer warnings
//   - Identity collision and range consistency errors
//   - Per-layer and per-file context on every message
package diagnostic
