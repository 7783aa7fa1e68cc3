package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/pathrewrite/pkg/operation"
	"github.com/walteh/pathrewrite/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct {
	// Environ is exposed to the file as the env object. Nil means os.Environ.
	Environ func() []string
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclConfig struct {
	Dirs        []string    `hcl:"dirs,optional"`
	Rules       []text.Rule `hcl:"rule,block"`
	Include     []string    `hcl:"include,optional"`
	Exclude     []string    `hcl:"exclude,optional"`
	Silent      bool        `hcl:"silent,optional"`
	OnError     string      `hcl:"on_error,optional"`
	Concurrency int         `hcl:"concurrency,optional"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "pathrewrite.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": p.envObject(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &Config{
		Dirs:        hclCfg.Dirs,
		Rules:       hclCfg.Rules,
		Include:     hclCfg.Include,
		Exclude:     hclCfg.Exclude,
		Silent:      hclCfg.Silent,
		OnError:     operation.OnError(hclCfg.OnError),
		Concurrency: hclCfg.Concurrency,
	}, nil
}

func (p *HCLParser) envObject() cty.Value {
	environ := p.Environ
	if environ == nil {
		environ = os.Environ
	}

	vars := map[string]cty.Value{}
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}
