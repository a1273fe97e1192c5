package config

import (
	"os"
	"path/filepath"
)

// api 和 worker 两个进程共用同一份 conf.yml。
const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// Load 解析配置。cfgName 为空时从当前目录逐级向上找 configs/conf.yml，
// 便于在仓库任意子目录下启动进程或跑测试。
func Load(cfgName string) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName)
			return
		}
		load(filepath.Join(curDir, cfgName))
		return
	}
	load(searchUpward(curDir))
}

func searchUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExists(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not found, searched configs/conf.yml upward from " + startDir)
		}
		dir = parent
	}
}
