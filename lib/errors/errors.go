package errors

// Pre-defined errors. These are sentinel values; callers compare with `==`.
var (
	// storage
	StorageRecordAlreadyExists = New(100, "record already exists in storage")
	StorageRecordDoesNotExist  = New(101, "record does not exist in storage")
	StorageCoreError           = New(102, "storage core error")

	// permission
	NoPermission       = New(110, "caller has no permission")
	VoterNotRegistered = New(111, "voter is not registered")

	// not-found
	ProposalDoesNotExist = New(120, "proposal does not exist")
	ClaimDoesNotExist    = New(121, "claim does not exist")
	AccountDoesNotExist  = New(122, "account does not exist")

	// timing
	AlreadyStarted          = New(130, "proposal has already started")
	AlreadyEnded            = New(131, "proposal has already ended")
	NotStartedYet           = New(132, "proposal has not started yet")
	NotEndedYet             = New(133, "proposal has not ended yet")
	CannotStartInPast       = New(134, "proposal cannot start in the past")
	CannotFinishBeforeStart = New(135, "proposal cannot finish before starting")
	StartTooFarAway         = New(136, "proposal start is too far away")
	DurationTooShort        = New(137, "proposal duration is too short")
	DurationTooLong         = New(138, "proposal duration is too long")

	// state
	ProposalNotClosed = New(140, "proposal is not closed")
	IdenticalVote     = New(141, "vote is identical to the existing one")

	// funds
	InsufficientBalance = New(150, "insufficient spendable balance")
	AmountOverflow      = New(151, "amount overflow")
	AmountUnderflow     = New(152, "amount under zero")

	// bounds
	OffchainDataTooLong = New(160, "offchain data is too long")
	AccountListTooLong  = New(161, "account list has too many entries")

	// api
	BadRequestParameter = New(170, "bad request parameter")
)
