package service

type App struct {
	User        *UserService
	Merchant    *MerchantService
	Task        *TaskService
	EditRequest *EditRequestService
	Workload    *WorkloadService
}

func NewApp(
	user *UserService,
	merchant *MerchantService,
	task *TaskService,
	editRequest *EditRequestService,
	workload *WorkloadService,
) *App {
	return &App{
		User:        user,
		Merchant:    merchant,
		Task:        task,
		EditRequest: editRequest,
		Workload:    workload,
	}
}
