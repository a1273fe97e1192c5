package config

type Config struct {
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	Worker     WorkerConfig     `yaml:"worker" mapstructure:"worker"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// GameConfig 世界参数。地图边长为 2*world_size+1。
type GameConfig struct {
	WorldSize int32 `yaml:"world_size" mapstructure:"world_size"`
	Speed     uint8 `yaml:"speed" mapstructure:"speed"`
	MapSeed   int64 `yaml:"map_seed" mapstructure:"map_seed"`
}

type WorkerConfig struct {
	PollIntervalMS int    `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
	BatchSize      int    `yaml:"batch_size" mapstructure:"batch_size"`
	MetricsAddr    string `yaml:"metrics_addr" mapstructure:"metrics_addr"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
