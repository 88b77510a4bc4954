package store

import (
	"github.com/utkarsh5026/grut/pkg/common/err"
	"github.com/utkarsh5026/grut/pkg/objects"
)

const pkgName = "store"

func notFound(op string, digest objects.Digest) error {
	return err.New(pkgName, err.CodeNotFound, op, "object "+digest.String()+" not found", nil)
}

func invalidDigest(op string, digest objects.Digest, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, op, "invalid digest "+string(digest), cause)
}

func corruptObject(op string, digest objects.Digest, cause error) error {
	return err.New(pkgName, err.CodeInvalidFormat, op, "corrupt object "+digest.String(), cause)
}

func internal(op string, cause error) error {
	return err.New(pkgName, err.CodeInternal, op, "", cause)
}
