// Copyright 2023-2025 EMQ Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"github.com/lf-edge/egraph/internal/pkg/def"
)

const ConfFileName = "egraph.yaml"

var Config *EgraphConf

type BasicConf struct {
	Debug      bool `yaml:"debug"`
	ConsoleLog bool `yaml:"consoleLog"`
	FileLog    bool `yaml:"fileLog"`
	RotateTime int  `yaml:"rotateTime"`
	MaxAge     int  `yaml:"maxAge"`
}

// Validate the configuration and reset to the default value for invalid
// values.
func (bc *BasicConf) Validate() error {
	var errs error
	if bc.RotateTime < 0 {
		bc.RotateTime = 24
		Log.Warnf("rotateTime is less than 0, set to 24")
		errs = errors.Join(errs, errors.New("rotateTime:rotateTime must be positive"))
	} else if bc.RotateTime == 0 {
		bc.RotateTime = 24
	}
	if bc.MaxAge < 0 {
		bc.MaxAge = 72
		Log.Warnf("maxAge is less than 0, set to 72")
		errs = errors.Join(errs, errors.New("maxAge:maxAge must be positive"))
	} else if bc.MaxAge == 0 {
		bc.MaxAge = 72
	}
	return errs
}

type EgraphConf struct {
	Basic BasicConf `yaml:"basic"`
	// Optimizer is the process-wide default option set handed to the
	// planner when a query carries none of its own.
	Optimizer *def.TraversalOption `yaml:"optimizer"`
}

func InitConf() {
	cpath, err := GetConfLoc()
	if err != nil {
		panic(err)
	}
	ec := EgraphConf{
		Optimizer: def.GetDefaultOption(),
	}

	err = LoadConfigFromPath(path.Join(cpath, ConfFileName), &ec)
	if err != nil {
		Log.Fatal(err)
		panic(err)
	}
	Config = &ec
	_ = Config.Basic.Validate()

	if Config.Basic.Debug {
		Log.SetLevel(logrus.DebugLevel)
	}

	if Config.Basic.FileLog {
		logDir, err := GetLoc(logDir)
		if err != nil {
			Log.Fatal(err)
		}

		file := path.Join(logDir, logFileName)
		logWriter, err := rotatelogs.New(
			file+".%Y-%m-%d_%H-%M-%S",
			rotatelogs.WithLinkName(file),
			rotatelogs.WithRotationTime(time.Hour*time.Duration(Config.Basic.RotateTime)),
			rotatelogs.WithMaxAge(time.Hour*time.Duration(Config.Basic.MaxAge)),
		)

		if err != nil {
			fmt.Println("Failed to init log file settings..." + err.Error())
			Log.Infof("Failed to log to file, using default stderr.")
		} else if Config.Basic.ConsoleLog {
			mw := io.MultiWriter(os.Stdout, logWriter)
			Log.SetOutput(mw)
		} else if !Config.Basic.ConsoleLog {
			Log.SetOutput(logWriter)
		}
	} else if Config.Basic.ConsoleLog {
		Log.SetOutput(os.Stdout)
	}
}

func init() {
	InitLogger()
	InitClock()
}
