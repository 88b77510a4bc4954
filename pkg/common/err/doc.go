// Package err is the error vocabulary shared across grut.
//
// Every package reports failures as *Error values that carry the package
// name, a machine-readable code and the failing operation:
//
//	const pkgName = "store"
//
//	return err.New(pkgName, err.CodeNotFound, "get", digest.String(), nil)
//
// Callers match on kind with the standard library:
//
//	if errors.Is(e, err.ErrCorruptHistory) {
//	    // history is damaged, as opposed to a missing object
//	}
//
// Store and chain failures keep their code when wrapped by higher layers, so
// "object never existed" and "history is corrupt" stay distinguishable all
// the way up to the CLI.
package err
