package log

// Registered subloggers, one per subsystem
var (
	Global       *SubLogger
	BackTester   *SubLogger
	PortfolioMgr *SubLogger
	ScriptMgr    *SubLogger
	DataMgr      *SubLogger
	DatabaseMgr  *SubLogger
	RESTSys      *SubLogger
	ConfigMgr    *SubLogger
)

func init() {
	Global = registerNewSubLogger("LOG")
	BackTester = registerNewSubLogger("BACKTEST")
	PortfolioMgr = registerNewSubLogger("PORTFOLIO")
	ScriptMgr = registerNewSubLogger("SCRIPT")
	DataMgr = registerNewSubLogger("MARKETDATA")
	DatabaseMgr = registerNewSubLogger("DATABASE")
	RESTSys = registerNewSubLogger("REST")
	ConfigMgr = registerNewSubLogger("CONFIG")
}

// Info sends an info log event to the sublogger output
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Info {
		return
	}
	sl.stage(infoHeader, data)
}

// Infof sends a formatted info log event to the sublogger output
func Infof(sl *SubLogger, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Info {
		return
	}
	sl.stagef(infoHeader, format, v...)
}

// Infoln sends an info log event to the sublogger output
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Info {
		return
	}
	sl.stageln(infoHeader, v...)
}

// Debug sends a debug log event to the sublogger output
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Debug {
		return
	}
	sl.stage(debugHeader, data)
}

// Debugf sends a formatted debug log event to the sublogger output
func Debugf(sl *SubLogger, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Debug {
		return
	}
	sl.stagef(debugHeader, format, v...)
}

// Warn sends a warn log event to the sublogger output
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Warn {
		return
	}
	sl.stage(warnHeader, data)
}

// Warnf sends a formatted warn log event to the sublogger output
func Warnf(sl *SubLogger, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Warn {
		return
	}
	sl.stagef(warnHeader, format, v...)
}

// Warnln sends a warn log event to the sublogger output
func Warnln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Warn {
		return
	}
	sl.stageln(warnHeader, v...)
}

// Error sends an error log event to the sublogger output
func Error(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Error {
		return
	}
	sl.stageln(errorHeader, v...)
}

// Errorf sends a formatted error log event to the sublogger output
func Errorf(sl *SubLogger, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Error {
		return
	}
	sl.stagef(errorHeader, format, v...)
}

// Errorln sends an error log event to the sublogger output
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !enabled || !sl.Error {
		return
	}
	sl.stageln(errorHeader, v...)
}
