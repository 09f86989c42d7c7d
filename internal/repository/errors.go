package repository

import (
	"context"
	"errors"

	"devfolio/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Mongo server codes that mean the caller is not allowed to do this.
var permissionCodes = []int{
	13,   // Unauthorized
	18,   // AuthenticationFailed
	8000, // AtlasError (user is not allowed)
}

// Classify maps a driver error onto the store error taxonomy.
func Classify(err error) domain.ErrorKind {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		for _, code := range permissionCodes {
			if serverErr.HasErrorCode(code) {
				return domain.KindPermission
			}
		}
	}

	var selectionErr topology.ServerSelectionError
	switch {
	case errors.As(err, &selectionErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return domain.KindConnectivity
	}
	return domain.KindUnknown
}

func wrapErr(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StoreError{Kind: Classify(err), Op: op, Collection: collection, Err: err}
}
