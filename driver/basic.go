// 2026 Craig Tomkow

package driver

// Basic serves any directory and has nothing to configure
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) Serves(string) bool { return true }

// WordPress has nothing to configure; wp-config.php is managed by the developer
type WordPress struct{}

func (WordPress) Name() string { return "wordpress" }

func (WordPress) Serves(path string) bool {
	return exists(path, "wp-config.php") || exists(path, "wp-config-sample.php")
}
