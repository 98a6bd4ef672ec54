package hrm

import (
	"embed"

	"github.com/hrgate/hrgate/modules/hrm/bulkimport"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence"
	"github.com/hrgate/hrgate/modules/hrm/presentation/controllers"
	"github.com/hrgate/hrgate/modules/hrm/services"
	"github.com/hrgate/hrgate/pkg/configuration"
	"github.com/hrgate/hrgate/pkg/eventbus"
	"github.com/hrgate/hrgate/pkg/server"
)

//go:embed infrastructure/persistence/schema/hrm-schema.sql
var migrationFiles embed.FS

// Schema returns the DDL applied at startup.
func Schema() (string, error) {
	data, err := migrationFiles.ReadFile("infrastructure/persistence/schema/hrm-schema.sql")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Module wires the HR repositories, services and controllers together.
type Module struct {
	SequenceService   *services.SequenceService
	EmployeeService   *services.EmployeeService
	DepartmentService *services.DepartmentService
	ImportService     *bulkimport.Service

	conf *configuration.Configuration
}

func NewModule(conf *configuration.Configuration, bus eventbus.EventBus) *Module {
	employees := persistence.NewEmployeeRepository()
	departments := persistence.NewDepartmentRepository()
	sequences := services.NewSequenceService(persistence.NewSequenceRepository())

	return &Module{
		SequenceService: sequences,
		EmployeeService: services.NewEmployeeService(
			employees,
			sequences,
			bus,
			conf.EmployeeCode.Prefix,
			conf.EmployeeCode.Padding,
		),
		DepartmentService: services.NewDepartmentService(departments),
		ImportService: bulkimport.NewService(
			bulkimport.Options{
				MaxUploadSize: conf.BulkImport.MaxUploadSize,
				MaxRows:       conf.BulkImport.MaxRows,
				Timeout:       conf.BulkImport.Timeout,
				CodePrefix:    conf.EmployeeCode.Prefix,
				CodePadding:   conf.EmployeeCode.Padding,
			},
			departments,
			employees,
			sequences,
			bus,
		),
		conf: conf,
	}
}

func (m *Module) Name() string {
	return "hrm"
}

func (m *Module) Controllers() []server.Controller {
	return []server.Controller{
		controllers.NewBulkImportController(m.ImportService, m.conf.BulkImport.MaxUploadSize),
		controllers.NewEmployeeController(m.EmployeeService),
	}
}
