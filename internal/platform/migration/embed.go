// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import "embed"

// files holds the versioned schema, compiled into the binary.
//
//go:embed sql/*.sql
var files embed.FS
