// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command socialbros is the operator CLI for schema migrations, session
// maintenance and account bootstrap.
package main

import "github.com/taibuivan/socialbros/cmd/socialbros/cmd"

func main() {
	cmd.Execute()
}
