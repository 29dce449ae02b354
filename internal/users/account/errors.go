// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "github.com/taibuivan/socialbros/internal/platform/apperr"

var errUnknownUsername = apperr.NotFound("User")
