// Application server is the main server for the application
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"

	"github.com/joho/godotenv"

	"github.com/starquake/quizgame/cmd/server/app"
	"github.com/starquake/quizgame/internal/config"
	"github.com/starquake/quizgame/internal/must"
)

const envFile = ".env"

// envFunc returns a getenv function that reads the process environment first and falls back to the variables in the
// dotenv file at path. A missing file is not an error.
func envFunc(path string) (func(string) string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.Getenv, nil
		}

		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}

		return vars[key]
	}, nil
}

func run(ctx context.Context, getenv func(string) string, stdout io.Writer) error {
	host, port := getenv("HOST"), getenv("PORT")
	if host == "" {
		host = config.HostDefault
	}
	if port == "" {
		port = config.PortDefault
	}

	listenConfig := &net.ListenConfig{}
	ln, err := listenConfig.Listen(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return fmt.Errorf("error listening on %s:%s: %w", host, port, err)
	}

	return app.Run(ctx, getenv, stdout, ln)
}

func main() {
	getenv := must.Any(envFunc(envFile))
	must.OK(run(context.Background(), getenv, os.Stdout))
}
