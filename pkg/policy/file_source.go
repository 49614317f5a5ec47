package policy

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/adminkit/guard/pkg/logging"
	"github.com/adminkit/guard/pkg/permissions"
	"github.com/adminkit/guard/pkg/roles"
)

// policyDocument is the on-disk YAML shape:
//
//	roles:
//	  admin:
//	    inherits: [editor]
//	    permissions:
//	      - entity:**
//	      - roles:assign
//	  editor:
//	    permissions:
//	      - entity:*:read
type policyDocument struct {
	Roles map[string]roleDocument `yaml:"roles"`
}

type roleDocument struct {
	Inherits    []string `yaml:"inherits"`
	Permissions []string `yaml:"permissions"`
}

// FileSource loads policy snapshots from a YAML file. It is a Loader,
// not a Source; wrap it in a ReloadingSource to serve decisions from it.
type FileSource struct {
	fs       afero.Fs
	filePath string
}

// NewFileSource creates a loader that reads from filePath on the given
// filesystem.
func NewFileSource(fs afero.Fs, filePath string) *FileSource {
	return &FileSource{
		fs:       fs,
		filePath: filePath,
	}
}

// Name implements Loader
func (s *FileSource) Name() string {
	return s.filePath
}

// Load implements Loader. Malformed permission patterns fail the load;
// hierarchy cycles do not (traversal tolerates them) but are logged.
func (s *FileSource) Load() (*Snapshot, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var doc policyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}

	snapshot := &Snapshot{
		Hierarchy:   make(map[string][]string, len(doc.Roles)),
		Permissions: make(map[string][]string, len(doc.Roles)),
	}
	for role, def := range doc.Roles {
		if role == "" {
			return nil, fmt.Errorf("policy file %s: empty role name", s.filePath)
		}
		for _, pattern := range def.Permissions {
			if err := permissions.ValidatePattern(pattern); err != nil {
				return nil, fmt.Errorf("policy file %s: role %q: %w", s.filePath, role, err)
			}
		}
		snapshot.Hierarchy[role] = def.Inherits
		snapshot.Permissions[role] = def.Permissions
	}

	if !roles.NewGraph(snapshot.Hierarchy).Validate() {
		logging.App.Warn("policy hierarchy contains a cycle; inheritance will collapse instead of loop",
			"file", s.filePath)
	}

	return snapshot, nil
}
