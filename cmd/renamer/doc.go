// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Renamer numbers the files of a directory in the order they were last
modified.

# Usage

	$ renamer -path <dir> [-prefix <string>] [-dry]

Each regular file directly inside dir gets a new name made of its position
(counting from 1, at least two digits), the prefix ("-" by default) and its
original name. The oldest file comes first:

	a.txt  ->  01-a.txt
	b.txt  ->  02-b.txt
	c.txt  ->  03-c.txt

Subdirectories and their contents are left alone. Renamer prints how many
files it found and asks for confirmation; only "y" or "Y" proceeds.

Renamer never overwrites a file. If a new name is already taken, it stops
there, and files renamed before that keep their new names.

With -dry, renamer prints the new names without asking and without renaming
anything.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/renamer/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
