package refs

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
)

const pkgName = "refs"

func corruptHead(op, message string, cause error) error {
	return err.New(pkgName, err.CodeCorruptHistory, op, message, cause)
}

func invalidDigest(op string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, "invalid commit digest", cause)
}

func internal(op string, cause error) error {
	return err.New(pkgName, err.CodeInternal, op, "", cause)
}
