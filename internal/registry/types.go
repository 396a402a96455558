package registry

// ModelVersion is one stored version of a trained model. The sample
// production core passes these through untouched; only environment and
// producer implementations interpret the payload.
type ModelVersion struct {
	ModelID  string            `cbor:"model_id"`
	Number   int               `cbor:"number"`
	Data     []byte            `cbor:"data"`
	UserData map[string]string `cbor:"user_data,omitempty"`
}
