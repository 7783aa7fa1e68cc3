package opts

import (
	"github.com/walteh/pathrewrite/pkg/config"
	"github.com/walteh/pathrewrite/pkg/log"
)

// RootOpts contains shared options used by all commands. It is filled in
// once flags are parsed, before any command runs. The console progress
// logger travels in the command context (see log.FromContext).
type RootOpts struct {
	Config     *config.Config
	UserLogger *log.UserLogger
}
