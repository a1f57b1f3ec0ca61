package importutil

import (
	"fmt"
	"io"

	"github.com/GustavoCaso/carfinder/internal/catalog"
)

// Catalog builds a catalog from a CSV file. Any bad row fails the whole
// import, since the catalog is fixed for the life of the process.
func Catalog(filename string, reader io.Reader) (*catalog.Catalog, error) {
	data, err := ParseFile(filename, reader)
	if err != nil {
		return nil, err
	}

	result, err := ApplyMapping(data)
	if err != nil {
		return nil, err
	}

	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", filename, err)
	}

	return catalog.New(result.Listings)
}
