// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"
)

// schemaVersion is the ledger table shape this build writes and expects.
// It is stamped as a database param on Initialize so a build older than
// whatever last wrote it can refuse to proceed instead of silently
// misreading rows, per the compatibility story x/mod/semver gives
// Go module resolution.
const schemaVersion = "v1.0.0"

const versionParam = "_smig_ledger_version"

var versionParamRE = regexp.MustCompile(`(?is)DEFINE\s+PARAM(?:\s+OVERWRITE)?\s+\$` + versionParam + `\s+VALUE\s+['"]([^'"]+)['"]`)

func versionDDL() string {
	return fmt.Sprintf("DEFINE PARAM OVERWRITE $%s VALUE '%s';", versionParam, schemaVersion)
}

// extractStoredVersion scans flattened INFO FOR DB statements for the
// ledger version param, returning "" if the ledger has never been
// initialized by any build.
func extractStoredVersion(statements []string) string {
	for _, s := range statements {
		if m := versionParamRE.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// checkVersion rejects a ledger stamped by a build whose major version is
// newer than this one supports; older or equal majors are accepted since
// Initialize always re-applies the current table/field definitions.
func checkVersion(stored string) error {
	if stored == "" {
		return nil
	}
	if semver.Compare(semver.Major(stored), semver.Major(schemaVersion)) > 0 {
		return fmt.Errorf("ledger: stored schema version %s is newer than this build supports (%s)", stored, schemaVersion)
	}
	return nil
}
