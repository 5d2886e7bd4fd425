package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"
)

// LoadMode is the information the catalog needs from go/packages.
const LoadMode = packages.NeedName | packages.NeedTypes

// TypeID names a declared type by package path and name.
type TypeID struct {
	PkgPath string // e.g. "annotation-schema/fixtures/gnomad"
	Name    string // e.g. "Variant"
}

func (id TypeID) String() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return id.PkgPath + "." + id.Name
}

// Catalog holds the exported named types of a set of loaded packages.
type Catalog struct {
	pkgs  map[string]string // path -> name
	types map[TypeID]*types.TypeName
}

// Load type-checks the packages matching patterns, e.g. "./fixtures/gnomad".
func Load(patterns ...string) (*Catalog, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: LoadMode}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	c := &Catalog{pkgs: make(map[string]string), types: make(map[TypeID]*types.TypeName)}

	for _, pkg := range pkgs {
		c.pkgs[pkg.PkgPath] = pkg.Name

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			if tn, ok := scope.Lookup(name).(*types.TypeName); ok && tn.Exported() {
				c.types[TypeID{PkgPath: pkg.PkgPath, Name: name}] = tn
			}
		}
	}

	return c, nil
}

// Packages returns the paths of the loaded packages, sorted.
func (c *Catalog) Packages() []string {
	out := make([]string, 0, len(c.pkgs))
	for path := range c.pkgs {
		out = append(out, path)
	}

	slices.Sort(out)

	return out
}

// loaded reports whether pkgPath is one of the catalog's packages. Types of
// other packages (time.Time and the like) are opaque.
func (c *Catalog) loaded(pkgPath string) bool {
	_, ok := c.pkgs[pkgPath]
	return ok
}

// Lookup returns the declared type id, or nil.
func (c *Catalog) Lookup(id TypeID) types.Type {
	tn, ok := c.types[id]
	if !ok {
		return nil
	}

	return tn.Type()
}

// Find returns the ids of the types called name, sorted by package path.
func (c *Catalog) Find(name string) []TypeID {
	var out []TypeID

	for id := range c.types {
		if id.Name == name {
			out = append(out, id)
		}
	}

	slices.SortFunc(out, func(a, b TypeID) int {
		switch {
		case a.PkgPath < b.PkgPath:
			return -1
		case a.PkgPath > b.PkgPath:
			return 1
		default:
			return 0
		}
	})

	return out
}
