// 2026 Craig Tomkow

package exec

import "strings"

// IsGzip reports whether filename looks gzip compressed. The match is case-insensitive and
// anywhere in the name, so "dump.sql.GZ" and "dump.gz.sql" both count.
func IsGzip(filename string) bool {
	return strings.Contains(strings.ToLower(filename), ".gz")
}

// MysqlImport streams file into database over the server socket, showing progress:
//
//	pv <file> [| gzip -cd] | mysql [-S <socket>] <database>
//
// An empty socket leaves the connection to the mysql client defaults.
func MysqlImport(file string, socket string, database string) Pipeline {
	stages := []Stage{NewStage("pv", file)}
	if IsGzip(file) {
		stages = append(stages, NewStage("gzip", "-cd"))
	}

	var args []string
	if socket != "" {
		args = append(args, "-S", socket)
	}
	stages = append(stages, NewStage("mysql", append(args, database)...))

	return Pipe(stages...)
}

// MysqlExport dumps database and compresses it into filename:
//
//	mysqldump <database> | gzip > <filename>
func MysqlExport(database string, filename string) Pipeline {
	return Pipe(
		NewStage("mysqldump", "--single-transaction", "--routines", "--triggers", database),
		NewStage("gzip"),
	).To(filename)
}
