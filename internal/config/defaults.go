package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default fixture search path
	DefaultTestPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "case-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultWorkers is the default number of workers
	DefaultWorkers = 1
	// DefaultStore is the default results store
	DefaultStore = StoreJSON
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"

	// DefaultDBHost is the default MySQL host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default MySQL port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default MySQL user
	DefaultDBUser = "root"
	// DefaultDBName is the default results database
	DefaultDBName = "casex_results"
)

// Results stores
const (
	StoreJSON  = "json"
	StoreMySQL = "mysql"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for fixtures
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
}
