// SPDX-License-Identifier: Apache-2.0

package cmd

import "errors"

var errSchemaNotFound = errors.New("smig: schema module not found, run 'smig init' to create one")
