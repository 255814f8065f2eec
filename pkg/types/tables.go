package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "sprout_"

const (
	TABLE_USER                 = TableName("user")
	TABLE_ACCESS_TOKEN         = TableName("access_token")
	TABLE_PLAN                 = TableName("plan")
	TABLE_ACTIVITY_LOG         = TableName("activity_log")
	TABLE_FEEDBACK_LOG         = TableName("feedback_log")
	TABLE_AGE_COHORT           = TableName("age_cohort")
	TABLE_DOMAIN               = TableName("domain")
	TABLE_COMPONENT            = TableName("component")
	TABLE_PLAY_TYPE            = TableName("play_type")
	TABLE_PLAY_TYPE_AGE_COHORT = TableName("play_type_age_cohort")
	TABLE_PLAY_TYPE_DOMAIN     = TableName("play_type_domain")
	TABLE_RESOURCE             = TableName("resource")
	TABLE_RESOURCE_AGE_COHORT  = TableName("resource_age_cohort")
	TABLE_RESOURCE_DOMAIN      = TableName("resource_domain")
	TABLE_CHUNK                = TableName("chunks")
)
