package grut

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "grut"

func notARepository(op, path string) error {
	return err.New(pkgName, err.CodeNotARepository, op, "not a grut repository: "+path, nil)
}

func sourceUnreadable(op, path string, cause error) error {
	return err.New(pkgName, err.CodeSourceUnreadable, op, "cannot read "+path, cause)
}

func invalidInput(op, message string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, message, cause)
}

func internal(op string, cause error) error {
	return err.New(pkgName, err.CodeInternal, op, "", cause)
}

func isNothingToCommit(e error) bool {
	return err.IsCode(e, err.CodeNothingToCommit)
}
