package catalog

import _ "embed"

//go:embed data/ingredients.json
var embeddedDataset []byte

// LoadEmbedded builds the catalog from the dataset compiled into the binary.
// This is the default source and needs no external services.
func LoadEmbedded() (*Catalog, error) {
	return Parse(embeddedDataset)
}

// EmbeddedDataset returns a copy of the raw JSON document compiled into the
// binary, for tooling that republishes it elsewhere.
func EmbeddedDataset() []byte {
	return append([]byte(nil), embeddedDataset...)
}
