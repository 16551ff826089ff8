package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/maxfl/SelectorFramework/errors"
)

// Definition is a YAML-declared pipeline assembly.
type Definition struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name" validate:"required"`
	// Algorithms lists the algorithms in execution order.
	Algorithms []ComponentDef `yaml:"algorithms" validate:"required,min=1,dive"`
	// Tools lists shared helper components.
	Tools []ComponentDef `yaml:"tools,omitempty" validate:"dive"`
	// Outputs declares named output files to bind before the run.
	Outputs []OutputDef `yaml:"outputs,omitempty" validate:"dive"`
	// Sources is the default ordered list of input source paths.
	Sources []string `yaml:"sources,omitempty"`
}

// ComponentDef names a registered component factory.
type ComponentDef struct {
	// Component is the registry lookup key.
	Component string `yaml:"component" validate:"required"`
}

// OutputDef declares an output file binding.
type OutputDef struct {
	// Name is the logical output name; empty means the default output.
	Name string `yaml:"name,omitempty"`
	// Path is where the file is created.
	Path string `yaml:"path" validate:"required"`
	// Reopen permits rebinding a name that is already bound.
	Reopen bool `yaml:"reopen,omitempty"`
}

var validate = validator.New()

// DefinitionLoader loads pipeline definitions by name.
type DefinitionLoader interface {
	Load(name string) (*Definition, error)
}

// FileDefinitionLoader loads definitions from YAML files on disk.
type FileDefinitionLoader struct {
	dirs []string
}

// NewFileDefinitionLoader creates a loader that searches the given
// directories for definition YAML files.
func NewFileDefinitionLoader(dirs ...string) *FileDefinitionLoader {
	return &FileDefinitionLoader{dirs: dirs}
}

// Load searches for {name}.yaml and {name}.yml in each configured
// directory.
func (l *FileDefinitionLoader) Load(name string) (*Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if def, err := loadDefinitionFile(path); err == nil {
				return def, nil
			}
		}
	}
	return nil, errors.InvalidDefinition(fmt.Sprintf("pipeline %q not found in %v", name, l.dirs))
}

// LoadDefinition loads a definition from explicit file paths, trying each
// until one succeeds.
func LoadDefinition(name string, paths ...string) (*Definition, error) {
	for _, path := range paths {
		def, err := loadDefinitionFile(path)
		if err == nil {
			return def, nil
		}
	}
	return nil, errors.InvalidDefinition(fmt.Sprintf("pipeline %q not found in provided paths", name))
}

func loadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.InvalidDefinition(fmt.Sprintf("parsing %s: %v", path, err))
	}
	if err := validate.Struct(&def); err != nil {
		return nil, errors.InvalidDefinition(err.Error()).WithDetail("path", path)
	}
	return &def, nil
}

// Assemble builds a Pipeline from a definition: outputs are bound first,
// then algorithms in declared order, then tools. Every component name
// must have a registered factory.
func Assemble(def *Definition, registry *Registry, opts ...Option) (*Pipeline, error) {
	if err := validate.Struct(def); err != nil {
		return nil, errors.InvalidDefinition(err.Error())
	}

	p := New(opts...)

	for _, out := range def.Outputs {
		name := out.Name
		if name == "" {
			name = DefaultOutput
		}
		if _, err := p.CreateOutput(out.Path, name, out.Reopen); err != nil {
			return nil, fmt.Errorf("assembling %q: %w", def.Name, err)
		}
	}

	for _, ad := range def.Algorithms {
		factory, ok := registry.Algorithm(ad.Component)
		if !ok {
			return nil, errors.UnknownComponent(ad.Component).WithDetail("pipeline", def.Name)
		}
		alg, err := factory()
		if err != nil {
			return nil, fmt.Errorf("creating algorithm %q: %w", ad.Component, err)
		}
		p.AddAlgorithm(alg)
	}

	for _, td := range def.Tools {
		factory, ok := registry.Tool(td.Component)
		if !ok {
			return nil, errors.UnknownComponent(td.Component).WithDetail("pipeline", def.Name)
		}
		tool, err := factory()
		if err != nil {
			return nil, fmt.Errorf("creating tool %q: %w", td.Component, err)
		}
		p.AddTool(tool)
	}

	return p, nil
}
