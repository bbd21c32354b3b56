package platform

import (
	"github.com/TimRka/Notes-manager-PL/pkg/core"
)

// New builds a ready service over the repository selected by the options:
//
//	svc, err := notebook.New("Notes.json", notebook.WithAdapter("json"))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	return core.NewService(repo, o.logger), nil
}
