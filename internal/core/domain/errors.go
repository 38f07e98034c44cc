package domain

import "go.trai.ch/zerr"

var (
	// ErrNoInputIdents is returned when a download run is started without any
	// package identifiers.
	ErrNoInputIdents = zerr.New("no package identifiers provided")

	// ErrInvalidIdent is returned when a package identifier string cannot be parsed.
	ErrInvalidIdent = zerr.New("invalid package identifier")

	// ErrInvalidTarget is returned when a target string cannot be parsed.
	ErrInvalidTarget = zerr.New("invalid package target")

	// ErrPermissionFailed is returned when the download directory tree cannot be
	// created or is not writable.
	ErrPermissionFailed = zerr.New("download directory is not usable")

	// ErrPackageNotFound is returned when the depot has no release matching an
	// identifier in the requested channel for the requested target.
	ErrPackageNotFound = zerr.New("package not found in depot")

	// ErrDepotAPI is returned for any depot-side failure other than a missing
	// package or an unsupported target.
	ErrDepotAPI = zerr.New("depot request failed")

	// ErrUnsupportedTarget is returned by the depot when the requested
	// platform/architecture is not supported. It is treated as a per-artifact
	// skip, not a run failure.
	ErrUnsupportedTarget = zerr.New("target not supported by depot")

	// ErrDownloadFailed is returned when an artifact download has exhausted all
	// retry attempts.
	ErrDownloadFailed = zerr.New("artifact download failed")

	// ErrVerificationFailed is returned when an artifact signature does not
	// verify against its signer's public key.
	ErrVerificationFailed = zerr.New("artifact verification failed")

	// ErrMalformedArtifact is returned when an artifact header cannot be parsed.
	ErrMalformedArtifact = zerr.New("malformed artifact")

	// ErrKeyNotFound is returned when a signer's public key is absent from the
	// local key store.
	ErrKeyNotFound = zerr.New("public key not found")

	// ErrInvalidSigner is returned when a signer identity string is not of the
	// form name-revision.
	ErrInvalidSigner = zerr.New("invalid signer identity")

	// ErrManifestParse is returned when a download manifest file cannot be
	// read or decoded.
	ErrManifestParse = zerr.New("failed to parse download manifest")
)
