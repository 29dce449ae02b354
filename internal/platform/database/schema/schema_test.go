// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/socialbros/internal/platform/database/schema"
)

func TestSelect(t *testing.T) {
	assert.Equal(t, "id, username, password, createdat, updatedat", schema.UserAccount.Select(""))
	assert.Equal(t,
		"s.id, s.userid, s.token, s.expiresat, s.useragent, s.ipaddress, s.isactive, s.createdat, s.updatedat",
		schema.UserSession.Select("s"),
	)
}
