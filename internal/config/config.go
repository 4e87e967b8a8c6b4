package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	cerr "github.com/saeidalz13/battleship-client/internal/error"
	mc "github.com/saeidalz13/battleship-client/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	RotationClockwise = "clockwise"
	RotationLegacy    = "legacy"
)

const (
	EnvStage        = "STAGE"
	EnvPlayerName   = "PLAYER_NAME"
	EnvServerHost   = "SERVER_HOST"
	EnvServerPort   = "SERVER_PORT"
	EnvBoardRows    = "BOARD_ROWS"
	EnvBoardCols    = "BOARD_COLS"
	EnvTransport    = "TRANSPORT"
	EnvWsPath       = "WS_PATH"
	EnvReplyTimeout = "REPLY_TIMEOUT"
	EnvPushTimeout  = "PUSH_TIMEOUT"
	EnvRotation     = "ROTATION"
)

const (
	defaultHost      = "localhost"
	defaultPort      = "9098"
	defaultBoardSize = 10
)

type Config struct {
	Stage        string
	PlayerName   string
	ServerHost   string
	ServerPort   string
	BoardRows    int
	BoardCols    int
	Transport    string
	WsPath       string
	ReplyTimeout time.Duration
	PushTimeout  time.Duration
	Rotation     string
}

// Load reads .env (outside prod) and then the environment. args are
// the positional command line arguments: [address [port]].
func Load(envFile string, args []string) (Config, error) {
	if os.Getenv(EnvStage) != StageProd {
		// A missing file is fine, the environment may carry everything.
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv, args)
}

// FromEnv builds the config from a lookup function so tests do not
// have to touch the process environment.
func FromEnv(getenv func(string) string, args []string) (Config, error) {
	cfg := Config{
		Stage:        withDefault(getenv(EnvStage), StageDev),
		PlayerName:   getenv(EnvPlayerName),
		ServerHost:   withDefault(getenv(EnvServerHost), defaultHost),
		ServerPort:   withDefault(getenv(EnvServerPort), defaultPort),
		Transport:    withDefault(getenv(EnvTransport), mc.TransportTCP),
		WsPath:       withDefault(getenv(EnvWsPath), mc.DefaultWsPath),
		ReplyTimeout: mc.DefaultReplyTimeout,
		Rotation:     withDefault(getenv(EnvRotation), RotationClockwise),
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, cerr.ErrInvalidEnvValue(EnvStage, cfg.Stage)
	}
	if cfg.Transport != mc.TransportTCP && cfg.Transport != mc.TransportWs {
		return Config{}, cerr.ErrInvalidEnvValue(EnvTransport, cfg.Transport)
	}
	if cfg.Rotation != RotationClockwise && cfg.Rotation != RotationLegacy {
		return Config{}, cerr.ErrInvalidEnvValue(EnvRotation, cfg.Rotation)
	}

	if len(args) > 0 {
		cfg.ServerHost = args[0]
	}
	if len(args) > 1 {
		cfg.ServerPort = args[1]
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		return Config{}, cerr.ErrInvalidEnvValue(EnvServerPort, cfg.ServerPort)
	}

	var err error
	if cfg.BoardRows, err = intEnv(getenv, EnvBoardRows, defaultBoardSize); err != nil {
		return Config{}, err
	}
	if cfg.BoardCols, err = intEnv(getenv, EnvBoardCols, defaultBoardSize); err != nil {
		return Config{}, err
	}
	if cfg.ReplyTimeout, err = durationEnv(getenv, EnvReplyTimeout, mc.DefaultReplyTimeout); err != nil {
		return Config{}, err
	}
	if cfg.PushTimeout, err = durationEnv(getenv, EnvPushTimeout, 0); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func intEnv(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, cerr.ErrInvalidEnvValue(key, raw)
	}
	return n, nil
}

func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, cerr.ErrInvalidEnvValue(key, raw)
	}
	return d, nil
}
