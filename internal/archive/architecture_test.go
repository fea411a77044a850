package archive

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyArchivePackageImportsAWS ensures the AWS SDK stays confined to the
// archive package. Other packages must depend on the Store interface or the
// ArchiveWriter contract instead of talking to S3 directly.
func TestOnlyArchivePackageImportsAWS(t *testing.T) {
	const awsPrefix = "github.com/aws/aws-sdk-go-v2"
	const allowedPrefix = "github.com/mcasademont9/nomad-forematics/internal/archive"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "github.com/mcasademont9/nomad-forematics/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == awsPrefix || strings.HasPrefix(importPath, awsPrefix+"/") {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden AWS SDK import: %s", v)
		}
		t.Fatalf("found %d forbidden AWS SDK imports", len(violations))
	}
}
