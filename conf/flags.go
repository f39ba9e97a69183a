// 2026 Craig Tomkow

package conf

import (
	"flag"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
)

// environment variables are read as DEVDB_<KEY>, e.g. DEVDB_HOME
const EnvPrefix = "DEVDB"

func SetLogToStderr() error {

	// override glog default logging. An interactive tool logs to the terminal, not /tmp
	if err := flag.Set("logtostderr", "true"); err != nil {
		return err
	}

	return nil
}

// expose the go flags (glog's -v, -logtostderr, ...) on a pflag set
func AddGoFlags(fs *pflag.FlagSet) {

	fs.AddGoFlagSet(flag.CommandLine)
}

// set --home flag, bound to DEVDB_HOME
func SetHomeFlag(fs *pflag.FlagSet, v *viper.Viper) error {

	fs.String("home", "", "devdb home directory holding config.json, Sites and Certificates (default ~/.devdb)")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v.BindPFlag("home", fs.Lookup("home"))
}

// Home returns the configured home directory, defaulting to ~/.devdb
func Home(v *viper.Viper) (string, error) {

	if home := v.GetString("home"); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(userHome, ".devdb"), nil
}
