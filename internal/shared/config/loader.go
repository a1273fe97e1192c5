package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// load 读入并监听配置文件。世界参数（地图尺寸、速度）进程启动后视为只读，
// 热更新只对日志级别这类运维项生效。
func load(path string) {
	if !fileExists(path) {
		panic(fmt.Sprintf("config file not found: %s", path))
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("配置文件变更: %s", e.Name)
		if err := v.Unmarshal(&Conf); err != nil {
			log.Printf("reload config: %v", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("read config %s: %w", path, err))
	}
	if err := v.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("unmarshal config %s: %w", path, err))
	}
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
