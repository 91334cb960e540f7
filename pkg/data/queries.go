/*
 * Copyright (C) 2019-Present Pivotal Software, Inc. All rights reserved.
 *
 * This program and the accompanying materials are made available under the terms
 * of the Apache License, Version 2.0 (the "License”); you may not use this file
 * except in compliance with the License. You may obtain a copy of the License at:
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed
 * under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR
 * CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 */

package data

// language=sql
var ScoreCurveQuery = `
select
    turn
  , action
  , score
  , power
from turns
where run_id = ?
order by turn asc
;
`

// language=sql
var EventTraceQuery = `
select
    turn
  , line
from events
where run_id = ?
order by turn asc, seq asc
;
`

// language=sql
var HighScoresQuery = `
select
    id
  , recorded
  , final_score
  , ticks
from runs
order by final_score desc, ticks desc
limit ?
;
`
