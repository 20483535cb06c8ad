package convertible

// TaskDefinition is the zeebe:taskDefinition of a job based element.
type TaskDefinition struct {
	Type    string `json:"type,omitempty"`
	Retries string `json:"retries,omitempty"`
}

// TaskDefinitionHolder is the capability to be executed by a job worker.
type TaskDefinitionHolder interface {
	Convertible
	SetTaskType(jobType string)
	SetRetries(retries string)
	TaskDefinition() TaskDefinition
}

// LoopCharacteristics is the zeebe:loopCharacteristics of a multi-instance
// activity.
type LoopCharacteristics struct {
	InputCollection     string `json:"inputCollection,omitempty"`
	InputElement        string `json:"inputElement,omitempty"`
	OutputCollection    string `json:"outputCollection,omitempty"`
	OutputElement       string `json:"outputElement,omitempty"`
	CompletionCondition string `json:"completionCondition,omitempty"`
}

// LoopHolder is the capability to run as multi-instance.
type LoopHolder interface {
	Convertible
	SetLoop(update func(*LoopCharacteristics))
	Loop() (LoopCharacteristics, bool)
}

// Definitions is the document root.
type Definitions struct {
	Element
}

func (*Definitions) Kind() Kind { return KindDefinitions }

// Process is an executable process.
type Process struct {
	Element
	versionTag string
}

func (*Process) Kind() Kind { return KindProcess }

// SetVersionTag sets the zeebe:versionTag value.
func (p *Process) SetVersionTag(tag string) {
	p.mutate()
	p.versionTag = tag
}

// VersionTag returns the version tag, or "".
func (p *Process) VersionTag() string { return p.versionTag }

// Activity is a task without engine specific behaviour, such as a manual
// task. The task variants embed it.
type Activity struct {
	Mapping
	loop *LoopCharacteristics
}

func (*Activity) Kind() Kind { return KindActivity }

// SetLoop creates the loop characteristics if needed and applies update.
func (a *Activity) SetLoop(update func(*LoopCharacteristics)) {
	a.mutate()
	if a.loop == nil {
		a.loop = &LoopCharacteristics{}
	}
	update(a.loop)
}

// Loop returns the loop characteristics and whether any were set.
func (a *Activity) Loop() (LoopCharacteristics, bool) {
	if a.loop == nil {
		return LoopCharacteristics{}, false
	}
	return *a.loop, true
}

// jobTask implements TaskDefinitionHolder.
type jobTask struct {
	definition TaskDefinition
}

func (j *jobTask) TaskDefinition() TaskDefinition { return j.definition }

// SubProcess is an embedded sub process.
type SubProcess struct {
	Activity
}

func (*SubProcess) Kind() Kind { return KindSubProcess }

// ServiceTask is a task executed by a job worker. Script and send tasks
// convert to it as well.
type ServiceTask struct {
	Activity
	jobTask
}

func (*ServiceTask) Kind() Kind { return KindServiceTask }

// SetTaskType sets the job type.
func (s *ServiceTask) SetTaskType(jobType string) {
	s.mutate()
	s.definition.Type = jobType
}

// SetRetries sets the job retries.
func (s *ServiceTask) SetRetries(retries string) {
	s.mutate()
	s.definition.Retries = retries
}

// Assignment is the zeebe:assignmentDefinition of a user task.
type Assignment struct {
	Assignee        string `json:"assignee,omitempty"`
	CandidateGroups string `json:"candidateGroups,omitempty"`
	CandidateUsers  string `json:"candidateUsers,omitempty"`
}

// Form references the form of a user task.
type Form struct {
	FormKey string `json:"formKey,omitempty"`
	FormID  string `json:"formId,omitempty"`
}

// Schedule is the zeebe:taskSchedule of a user task.
type Schedule struct {
	DueDate      string `json:"dueDate,omitempty"`
	FollowUpDate string `json:"followUpDate,omitempty"`
}

// UserTask is a task completed by a person.
type UserTask struct {
	Activity
	assignment Assignment
	form       Form
	schedule   Schedule
}

func (*UserTask) Kind() Kind { return KindUserTask }

// SetAssignment applies update to the assignment.
func (u *UserTask) SetAssignment(update func(*Assignment)) {
	u.mutate()
	update(&u.assignment)
}

// Assignment returns the assignment.
func (u *UserTask) Assignment() Assignment { return u.assignment }

// SetForm applies update to the form reference.
func (u *UserTask) SetForm(update func(*Form)) {
	u.mutate()
	update(&u.form)
}

// Form returns the form reference.
func (u *UserTask) Form() Form { return u.form }

// SetSchedule applies update to the schedule.
func (u *UserTask) SetSchedule(update func(*Schedule)) {
	u.mutate()
	update(&u.schedule)
}

// Schedule returns the schedule.
func (u *UserTask) Schedule() Schedule { return u.schedule }

// CalledDecision is the zeebe:calledDecision of a business rule task.
type CalledDecision struct {
	DecisionID     string `json:"decisionId,omitempty"`
	ResultVariable string `json:"resultVariable,omitempty"`
}

// BusinessRuleTask evaluates a decision, or runs as a job when it is
// implemented by a delegate.
type BusinessRuleTask struct {
	Activity
	jobTask
	decision CalledDecision
}

func (*BusinessRuleTask) Kind() Kind { return KindBusinessRuleTask }

// SetTaskType sets the job type.
func (b *BusinessRuleTask) SetTaskType(jobType string) {
	b.mutate()
	b.definition.Type = jobType
}

// SetRetries sets the job retries.
func (b *BusinessRuleTask) SetRetries(retries string) {
	b.mutate()
	b.definition.Retries = retries
}

// SetCalledDecision applies update to the called decision.
func (b *BusinessRuleTask) SetCalledDecision(update func(*CalledDecision)) {
	b.mutate()
	update(&b.decision)
}

// CalledDecision returns the called decision.
func (b *BusinessRuleTask) CalledDecision() CalledDecision { return b.decision }

// CalledElement is the zeebe:calledElement of a call activity.
type CalledElement struct {
	ProcessID                   string `json:"processId,omitempty"`
	PropagateAllChildVariables  bool   `json:"propagateAllChildVariables"`
	PropagateAllParentVariables bool   `json:"propagateAllParentVariables"`
}

// CallActivity starts another process.
type CallActivity struct {
	Activity
	called CalledElement
}

func (*CallActivity) Kind() Kind { return KindCallActivity }

// SetCalledElement applies update to the called element.
func (c *CallActivity) SetCalledElement(update func(*CalledElement)) {
	c.mutate()
	update(&c.called)
}

// CalledElement returns the called element.
func (c *CallActivity) CalledElement() CalledElement { return c.called }

// ReceiveTask waits for a message.
type ReceiveTask struct {
	Activity
}

func (*ReceiveTask) Kind() Kind { return KindReceiveTask }

// Event is a start, end, intermediate or boundary event. Message throw
// events are executed by a job worker, so events hold a task definition.
type Event struct {
	Mapping
	jobTask
	eventType string
}

// NewEvent returns an event of the given element type, such as "endEvent".
func NewEvent(eventType string) *Event {
	return &Event{eventType: eventType}
}

func (*Event) Kind() Kind { return KindEvent }

// EventType returns the element type the event was created for.
func (e *Event) EventType() string { return e.eventType }

// SetTaskType sets the job type.
func (e *Event) SetTaskType(jobType string) {
	e.mutate()
	e.definition.Type = jobType
}

// SetRetries sets the job retries.
func (e *Event) SetRetries(retries string) {
	e.mutate()
	e.definition.Retries = retries
}

// Gateway is any gateway.
type Gateway struct {
	Element
}

func (*Gateway) Kind() Kind { return KindGateway }

// SequenceFlow connects two flow nodes.
type SequenceFlow struct {
	Element
	condition    string
	hasCondition bool
}

func (*SequenceFlow) Kind() Kind { return KindSequenceFlow }

// SetCondition sets the converted condition expression.
func (s *SequenceFlow) SetCondition(condition string) {
	s.mutate()
	s.condition = condition
	s.hasCondition = true
}

// Condition returns the converted condition and whether one was set.
func (s *SequenceFlow) Condition() (string, bool) {
	return s.condition, s.hasCondition
}

var (
	_ PropertyHolder       = (*Definitions)(nil)
	_ PropertyHolder       = (*Process)(nil)
	_ DataMapper           = (*Activity)(nil)
	_ DataMapper           = (*SubProcess)(nil)
	_ DataMapper           = (*ServiceTask)(nil)
	_ DataMapper           = (*UserTask)(nil)
	_ DataMapper           = (*BusinessRuleTask)(nil)
	_ DataMapper           = (*CallActivity)(nil)
	_ DataMapper           = (*ReceiveTask)(nil)
	_ DataMapper           = (*Event)(nil)
	_ LoopHolder           = (*Activity)(nil)
	_ LoopHolder           = (*ServiceTask)(nil)
	_ TaskDefinitionHolder = (*ServiceTask)(nil)
	_ TaskDefinitionHolder = (*BusinessRuleTask)(nil)
	_ TaskDefinitionHolder = (*Event)(nil)
	_ Convertible          = (*Gateway)(nil)
	_ Convertible          = (*SequenceFlow)(nil)
)
