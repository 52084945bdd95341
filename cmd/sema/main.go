/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/semalabs/sema/pkg/cli"

func main() {
	cli.Execute()
}
