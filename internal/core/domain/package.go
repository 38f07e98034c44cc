package domain

// ResolvedPackage is the depot's answer to resolving one identifier: the
// fully-qualified ident it settled on plus that package's full transitive
// runtime dependency closure.
type ResolvedPackage struct {
	// Ident is the fully-qualified identifier the depot resolved to.
	Ident PackageIdent

	// TDeps is the transitive closure of runtime dependencies, each fully
	// qualified.
	TDeps []PackageIdent
}
