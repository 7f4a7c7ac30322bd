package storage

import (
	"errors"

	"github.com/aws/smithy-go"
)

// client-side rejections for which retrying is futile
var clientErrorCodes = map[string]struct{}{
	"NoSuchKey":             {},
	"NoSuchBucket":          {},
	"AccessDenied":          {},
	"InvalidAccessKeyId":    {},
	"SignatureDoesNotMatch": {},
	"InvalidObjectState":    {},
	"MethodNotAllowed":      {},
}

// IsClientError reports whether err is a client-side S3 rejection (missing
// object, denied access, bad credentials) that no amount of retrying fixes.
func IsClientError(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		_, ok := clientErrorCodes[ae.ErrorCode()]
		return ok
	}
	return false
}
