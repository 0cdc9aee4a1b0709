package mocks

//go:generate mockery --name EventStore --srcpkg github.com/scriptoria-lab/project-scriptoria/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ProjectionCache --srcpkg github.com/scriptoria-lab/project-scriptoria/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ProfileStore --srcpkg github.com/scriptoria-lab/project-scriptoria/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name HolidayCalendar --srcpkg github.com/scriptoria-lab/project-scriptoria/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
