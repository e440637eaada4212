// SPDX-License-Identifier: GPL-3.0-or-later

package buildinfo

// Version stores the version number. It's set during the build process using build flags.
var Version = "v0.0.0"

// CatalogPath stores the path of the stock device catalog, used when no catalog is given.
// This value is set during the build process using build flags.
var CatalogPath = ""
