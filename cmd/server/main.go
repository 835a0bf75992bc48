package main

import (
	"flag"

	"github.com/joeblew999/plat-webfonts/internal/config"
	"github.com/joeblew999/plat-webfonts/internal/server"
	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

func main() {
	configFile := flag.String("f", "etc/webfonts-server.yaml", "config file path")
	envFile := flag.String("env", ".env", "dotenv file loaded before the config")
	flag.Parse()

	logx.DisableStat()

	// a missing .env is fine; the process environment still applies
	if err := godotenv.Load(*envFile); err == nil {
		logx.Infow("Loaded environment file", logx.Field("path", *envFile))
	}

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	s, err := server.New(c)
	logx.Must(err)

	s.Start()
}
