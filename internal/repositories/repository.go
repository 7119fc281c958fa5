package repositories

type Repository struct {
	StateSlot StateSlotRepository
}

func New() Repository {
	return Repository{
		StateSlot: NewStateSlotRepository(),
	}
}
